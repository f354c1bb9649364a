package render

// formScript drives the flight search form. It collects the form
// fields, selects the target tool, and posts a tool action to the
// embedding client when framed.
const formScript = `
console.log('Flight search form script loaded');

if (document.readyState === 'loading') {
  document.addEventListener('DOMContentLoaded', initForm);
} else {
  initForm();
}

function initForm() {
  const form = document.getElementById('flightSearchForm');
  const resultDiv = document.getElementById('result');
  const submitBtn = document.getElementById('submitBtn');

  if (!form) {
    console.error('Form not found!');
    return;
  }

  submitBtn.addEventListener('click', async (e) => {
    submitBtn.disabled = true;
    submitBtn.textContent = '🔍 Searching...';
    resultDiv.className = 'result info';
    resultDiv.textContent = 'Submitting your search request...';

    const formData = {
      originCity: document.getElementById('originCity').value,
      destinationCity: document.getElementById('destinationCity').value,
      dateOfTravel: document.getElementById('dateOfTravel').value,
      filters: {
        price: parseInt(document.getElementById('price').value),
        discountPercentage: parseFloat(document.getElementById('discountPercentage').value)
      }
    };

    const selectedTool = document.getElementById('toolSelection').value;

    const action = {
      type: 'tool',
      payload: {
        toolName: selectedTool,
        params: formData
      }
    };

    try {
      const isInIframe = window.self !== window.top;

      if (isInIframe) {
        window.parent.postMessage(action, '*');
        resultDiv.className = 'result success';
        resultDiv.textContent = '✅ Search request sent! Tool "' + selectedTool + '" will be executed with your parameters.';
      } else {
        resultDiv.className = 'result info';
        resultDiv.innerHTML = '<strong>⚠️ Not in an embedding client</strong><br><br>' +
          '<strong>Action that would be sent:</strong><br>' +
          '<pre style="background: #f5f5f5; padding: 10px; border-radius: 4px; overflow-x: auto;">' +
          JSON.stringify(action, null, 2) +
          '</pre>';
      }
    } catch (error) {
      resultDiv.className = 'result error';
      resultDiv.textContent = '❌ Error: ' + error.message;
    } finally {
      submitBtn.disabled = false;
      submitBtn.textContent = 'Search Flights';
    }
  });
}
`
